package logger

import "log/slog"

// Error returns an "error" attr, or an empty attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID returns a "request_id" attr, or an empty attr for an empty id.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names what happened.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// MessageKey is the catalog key selected for a response.
func MessageKey(key string) slog.Attr {
	return slog.String("message_key", key)
}

// Locale is the language a message was rendered in.
func Locale(lang string) slog.Attr {
	return slog.String("locale", lang)
}

// Path is the request path.
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

package httpapi

import "github.com/rs/zerolog"

// zlog is an optional structured logger. If unset, the HTTP layer stays quiet.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// logErr logs at error level when a logger is installed.
func logErr(msg string, err error) {
	if zlog == nil {
		return
	}
	zlog.Error().Err(err).Msg(msg)
}

package posixfs

import "log/slog"

type Option interface {
	apply(*Provider)
}

type optionUmask int

func (o optionUmask) apply(p *Provider) {
	p.umask = int(o)
}

// WithUmask sets the host permission bits cleared from modes of created files and directories.
// The default is 0, no bits cleared.
func WithUmask(mask int) Option {
	return optionUmask(mask)
}

type optionLogger [1]*slog.Logger

func (o optionLogger) apply(p *Provider) {
	if o[0] != nil {
		p.logger = o[0]
	}
}

// WithLogger sets the logger failures are reported to at debug level.
// Without it, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return optionLogger{logger}
}

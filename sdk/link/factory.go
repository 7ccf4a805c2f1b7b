package link

import (
	"errors"

	"github.com/docwilco/linksync/internal/engine/localengine"
	"github.com/docwilco/linksync/sdk/contracts"
)

// ErrInvalidTempo is returned when a session is created with a non-positive
// initial tempo. The engine's behavior for such tempos is undefined, so the
// value is rejected at this layer.
var ErrInvalidTempo = errors.New("initial tempo must be positive")

// NewSession creates a session with the specified initial tempo in beats per
// minute. It applies default options and starts disabled; call Enable to
// join the shared session.
//
// bpm float64: Initial tempo, must be positive.
// opts ...contracts.Option: A variadic list of option functions to customize the session.
//
// Returns:
//   - *Session: The session, nil on failure.
//   - error: ErrInvalidTempo for a non-positive tempo, or an engine construction error.
func NewSession(bpm float64, opts ...contracts.Option) (*Session, error) {
	if bpm <= 0 {
		return nil, ErrInvalidTempo
	}

	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	engine := options.Engine
	if engine == nil {
		engine = localengine.New(bpm, options.Logger)
	}

	options.Logger.Info("session created",
		options.Logger.Field().Float64("bpm", bpm))

	return &Session{
		engine: engine,
		logger: options.Logger,
	}, nil
}

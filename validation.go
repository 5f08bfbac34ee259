package testlogging

import (
	"sync"

	smerrors "github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

// configValues is the snapshot of a Config checked by validateConfig.
type configValues struct {
	MinLevel           Level `validate:"gte=0,lte=6"`
	ScopePaddingSpaces int   `validate:"gte=0,lte=32"`
}

func validateConfig(cfg *Config) error {
	const op smerrors.Op = "testlogging.validateConfig"
	if cfg == nil {
		return invalidArgument(op, errMsgConfigInvalid)
	}

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	values := configValues{
		MinLevel:           cfg.MinLevel(),
		ScopePaddingSpaces: cfg.ScopePaddingSpaces(),
	}
	if err := validate.Struct(values); err != nil {
		return smerrors.New(op).Err(ErrConfigInvalid).Msg(errMsgConfigInvalid + " " + err.Error())
	}

	return nil
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CategoryInput is the editable part of a category. An empty name is allowed.
type CategoryInput struct {
	Name string `validate:"max=200"`
}

// ItemInput is the editable part of an item.
type ItemInput struct {
	Description string `validate:"max=500"`
	Completed   bool
	CategoryID  int64 `validate:"gte=0"`
}

var validate = validator.New()

func (in *CategoryInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	return validateStruct(in)
}

func (in *ItemInput) normalize() error {
	in.Description = strings.TrimSpace(in.Description)
	return validateStruct(in)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

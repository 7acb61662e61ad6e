package wagepreset

import "errors"

var (
	ErrPresetNotFound = errors.New("wage preset not found")
)

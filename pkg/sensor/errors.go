package sensor

import "errors"

var (
	ErrUnknownSensor  = errors.New("unknown sensor")
	ErrInactiveSensor = errors.New("sensor is inactive")
)

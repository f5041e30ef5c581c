package config

import "errors"

var (
	// ErrEmptyURL is returned when webserver.url is missing. The public
	// base URL is required to compose share links.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero is returned when no listening port is set.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port can not be 0")
)

package mailer

import "context"

type Option func(*Options)

type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Context  context.Context
}

func WithHost(host string) Option {
	return func(o *Options) {
		o.Host = host
	}
}

func WithPort(port int) Option {
	return func(o *Options) {
		o.Port = port
	}
}

func WithUsername(username string) Option {
	return func(o *Options) {
		o.Username = username
	}
}

func WithPassword(password string) Option {
	return func(o *Options) {
		o.Password = password
	}
}

func WithFrom(from string) Option {
	return func(o *Options) {
		o.From = from
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Host:    "localhost",
		Port:    587,
		From:    "recap@localhost",
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

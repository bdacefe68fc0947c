package controllers

import "github.com/rios0rios0/ghpush/internal/domain/commands"

// NewPushControllerWithEnv builds a controller reading the environment from lookup.
func NewPushControllerWithEnv(command commands.Push, lookup func(string) string) *PushController {
	return &PushController{command: command, lookupEnv: lookup}
}

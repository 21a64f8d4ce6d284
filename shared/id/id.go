// Package id provides ID generation helpers used across the service.
package id

import (
	nanoid "github.com/matoous/go-nanoid/v2"
)

const DefaultLength = 21

const (
	PrefixPrompt     = "prompt"
	PrefixComponent  = "pc"
	PrefixTag        = "tag"
	PrefixModeration = "mod"
)

func New(prefix string) string {
	id, err := nanoid.New(DefaultLength)
	if err != nil {
		panic("nanoid generation failed: " + err.Error())
	}
	return prefix + "_" + id
}

func NewPrompt() string     { return New(PrefixPrompt) }
func NewComponent() string  { return New(PrefixComponent) }
func NewTag() string        { return New(PrefixTag) }
func NewModeration() string { return New(PrefixModeration) }

package cpu

import "errors"

var (
	ErrImageTooLarge  = errors.New("image too large")
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("call stack underflow")
)

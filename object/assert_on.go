//go:build heapassert

package object

const assertionsEnabled = true

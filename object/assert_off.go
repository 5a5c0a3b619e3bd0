//go:build !heapassert

package object

const assertionsEnabled = false

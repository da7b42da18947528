//go:build debug

package caenhv

var alloc int

func noteAlloc(n int) {
	alloc += n
}

func Alloc() int {
	return alloc
}

package main

import (
	"github.com/qoiview/qoiview/cmd/qvpkg/internal"
)

func main() {
	internal.Execute()
}

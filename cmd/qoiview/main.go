package main

import (
	"github.com/qoiview/qoiview/cmd/qoiview/internal"
)

func main() {
	internal.Execute()
}

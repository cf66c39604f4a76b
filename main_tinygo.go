//go:build tinygo

package main

import (
	"octopad/app"
	"octopad/hal"
)

func main() {
	app.Run(hal.New())
}

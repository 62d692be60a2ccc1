// Package main starts the wedding media service.
package main

import "github.com/Karin-Goldin/wedding-app/pkg/cmd"

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}

package main

import "github.com/oshokin/alarm-reconciler/cmd/alarm-reconciler/cmd"

func main() {
	cmd.Execute()
}

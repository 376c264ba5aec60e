package main

import "github.com/oshokin/wasi-sdk-setup/cmd/wasi-sdk-setup/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/frahmantamala/ld-portal/cmd"

func main() {
	cmd.Execute()
}

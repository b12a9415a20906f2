package main

import "github.com/harrisonrobin/taskport/pkg/cmd"

func main() {
	cmd.Execute()
}

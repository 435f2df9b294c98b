package main

import (
	"os"

	"github.com/example/quickstart/resource"
	"github.com/example/quickstart/server"
)

func main() {
	os.Exit(server.Main(server.DefaultApplicationName, os.Args[1:], os.Stdout, os.Stderr, resource.Default()))
}

package main

import "github.com/invoiceworks/backend/internal/cli"

func main() {
	cli.Execute()
}

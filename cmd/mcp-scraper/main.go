package main

import "github.com/cgordon-dev/github-mcp-scraper/internal/cli"

func main() {
	cli.Execute()
}

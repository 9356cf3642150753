// Command llm-agent sends a text file to a chat completion model once per
// requested output label and writes each reply next to the input as
// <stem>.<label><ext>.
package main

import (
	"auto_content_publisher/cli"
	"auto_content_publisher/config"
	"auto_content_publisher/generator"
)

func main() {
	cli.Main(newRootCmd(config.Load, generator.NewLLM))
}

// Command filelauncher runs action commands (usually llm-agent and the
// publishers) for files matching the rules in a YAML rule file.
package main

import (
	"auto_content_publisher/cli"
	"auto_content_publisher/config"
)

func main() {
	cli.Main(newRootCmd(config.Load))
}

// Command medium-publisher posts a document to Medium as a draft when it
// contains the publish marker. Without the marker it exits quietly.
package main

import (
	"auto_content_publisher/cli"
	"auto_content_publisher/config"
)

func main() {
	cli.Main(newRootCmd(config.Load))
}

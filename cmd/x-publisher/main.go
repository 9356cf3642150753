// Command x-publisher posts the first 280 characters of a document to X when
// it contains the publish marker. Without the marker it exits quietly.
package main

import (
	"auto_content_publisher/cli"
	"auto_content_publisher/config"
)

func main() {
	cli.Main(newRootCmd(config.Load))
}

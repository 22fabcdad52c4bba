package main

import (
	"os"

	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args))
}

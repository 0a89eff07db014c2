package main

import "github.com/klytics/xlbatch/cmd"

func main() {
	cmd.Execute()
}

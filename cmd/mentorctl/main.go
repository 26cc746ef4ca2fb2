package main

import "github.com/aimentor/mentor-go/cmd/mentorctl/cmd"

func main() {
	cmd.Execute()
}

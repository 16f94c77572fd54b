package main

import "assessment_backend/cmd"

func main() {
	cmd.Execute()
}

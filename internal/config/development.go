package config

import "os"

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// LogFile is where the JSON log goes outside development. The terminal
// belongs to the game.
func LogFile() string {
	path, ok := os.LookupEnv("MINES_LOG_FILE")
	if !ok {
		return "minesweeper.log"
	}
	return path
}

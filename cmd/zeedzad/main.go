// zeedzad is the web layer of the zeedzad video catalog.
//
// It runs the /api gateway in front of the video backend and provides
// commands for resolving which game a video shows:
//   - a reverse proxy that forwards /api/* to the backend unchanged
//   - local-first game search with fallback to the external metadata service
//   - binding a game to a video, creating the game locally when needed
//
// Usage:
//
//	# Start the gateway with default configuration
//	zeedzad run
//
//	# Point the gateway at another backend
//	zeedzad run --backend http://10.0.0.5:8088
//
//	# Search for a game
//	zeedzad games search "hollow knight"
//
//	# Bind a game found externally to a video
//	zeedzad games match 3f2a9c 1942 --name "The Witcher 3" --external
//
//	# Trigger a channel sync
//	zeedzad videos sync
package main

import "os"

func main() {
	os.Exit(Execute())
}

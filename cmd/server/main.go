package main

import (
	"os"

	"membox/backend/internal/app"
)

// @title           MemBox API
// @version         1.0
// @description     Multimodal chat backend with an external long-term memory service.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}

package env

import (
	"os"

	"github.com/joho/godotenv"
)

// Load reads the .env file from the working directory into the process
// environment. A missing file is not an error, variables are expected to
// come from the deployment environment in that case.
func Load() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

package cmdline

import (
	"io"
	"log"
)

// Debug logger set to io.Discard by default.
// Enable parse tracing by setting: `cmdline.Debug.SetOutput(os.Stderr)`.
var Debug = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

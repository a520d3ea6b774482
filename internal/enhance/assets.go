package enhance

import _ "embed"

// Runtime is the browser script served at /assets/main.js.
//
//go:embed assets/main.js
var Runtime []byte

package env

import "os"

// Prefix namespaces every catalog environment variable.
const Prefix = "CATALOG_"

// Get reads Prefix+name, then the bare name, then fallback. Empty values
// count as unset.
func Get(name, fallback string) string {
	for _, key := range []string{Prefix + name, name} {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
	}
	return fallback
}

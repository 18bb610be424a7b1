//go:build !unix

package dfxml

func osRelease() (string, string) {
	return "unknown", "unknown"
}

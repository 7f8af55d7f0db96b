package entities

import (
	"crypto/md5"
	"encoding/hex"
)

const identitySeparator = "\x1f"

// Identify returns the deduplication key of a posting: md5 hex of title, company and link.
func Identify(title, company, link string) string {
	sum := md5.Sum([]byte(title + identitySeparator + company + identitySeparator + link))
	return hex.EncodeToString(sum[:])
}

// Package domain holds the rail reservation model shared by the core services
// and every adapter. It has no knowledge of the booking provider's wire format.
package domain

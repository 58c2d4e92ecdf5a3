// Package utils provides small shared helpers used across simple-admin packages.
package utils

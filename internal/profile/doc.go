// Package profile defines the fixed table of target encoding profiles
// selectable by resolution label (240p through 2160p60).
package profile

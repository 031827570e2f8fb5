// Package browser manages a bounded pool of headless Chrome instances and
// the portal interaction for scheme checks.
package browser

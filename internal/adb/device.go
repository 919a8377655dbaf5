package adb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Content provider URIs queried on the device.
const (
	SMSInboxURI = "content://sms/inbox/"
	SMSSentURI  = "content://sms/sent/"
	CallLogURI  = "content://call_log/calls/"
	ContactsURI = "content://contacts/phones/"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeDeviceName replaces every character outside [a-zA-Z0-9_] with '_'.
func SanitizeDeviceName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// Device queries the connected handset.
type Device struct {
	runner Runner
}

func NewDevice(runner Runner) *Device {
	return &Device{runner: runner}
}

// Name returns the sanitized product model of the connected device.
func (d *Device) Name(ctx context.Context) (string, error) {
	out, err := d.runner.Run(ctx, "shell", "getprop", "ro.product.model")
	if err != nil {
		return "", fmt.Errorf("failed to fetch device name: %w", err)
	}
	return SanitizeDeviceName(strings.TrimSpace(out)), nil
}

// Messages returns the raw inbox dump followed by the raw sent-box dump.
func (d *Device) Messages(ctx context.Context) (string, error) {
	inbox, err := d.query(ctx, SMSInboxURI)
	if err != nil {
		return "", err
	}
	sent, err := d.query(ctx, SMSSentURI)
	if err != nil {
		return "", err
	}
	return inbox + "\n" + sent, nil
}

func (d *Device) CallLog(ctx context.Context) (string, error) {
	return d.query(ctx, CallLogURI)
}

func (d *Device) Contacts(ctx context.Context) (string, error) {
	return d.query(ctx, ContactsURI, "--projection", "display_name:number")
}

func (d *Device) query(ctx context.Context, uri string, extra ...string) (string, error) {
	args := append([]string{"shell", "content", "query", "--uri", uri}, extra...)
	out, err := d.runner.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", uri, err)
	}
	return out, nil
}

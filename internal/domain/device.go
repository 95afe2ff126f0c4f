package domain

type ContextKey string

// DeviceContextKey carries the visitor's device id (a string) in a request context.
const DeviceContextKey ContextKey = "device"

// StorageScope returns the LocalStorage view that belongs to one device.
type StorageScope func(deviceID string) LocalStorage

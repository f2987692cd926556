package mython

// Version is reported by the cmd drivers.
const Version = "0.3.1"

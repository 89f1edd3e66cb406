package http

var ToEnvelope = toEnvelope

// Package devicesimulator generates synthetic consumption readings for
// every registered device. Load follows a daily shape: low overnight, a
// morning ramp, steady daytime use, and an evening peak.
package devicesimulator

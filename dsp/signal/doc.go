// Package signal generates deterministic excitation signals, including a
// frozen random pattern convected past two sensors.
package signal

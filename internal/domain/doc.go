// Package domain contains the core business entities of the task tracker:
// users, tasks, and their attached documents. Entities validate themselves
// and carry no persistence or transport concerns.
package domain

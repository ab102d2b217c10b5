/*
Package device exposes scull stores as a set of numbered devices.

A Registry owns the devices and their stores. Opening a Device yields a File,
a handle with its own cursor implementing io.Reader, io.Writer and io.Seeker
on top of the store. Opening a device for writing only truncates it.

Reads from a hole left by a sparse write return zeroes.
*/
package device

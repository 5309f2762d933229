// Package spatialmath converts camera orientations between yaw/pitch/roll angles, rotation
// matrices and quaternions, and between the Y-up, Y-down and Z-up coordinate bases used by
// rig descriptions.
//
// Unless stated otherwise transforms use the Y-up basis: X points right, Y points up and Z
// points inward. Angles are in radians. Yaw rotates rightward around Y, pitch rotates upward
// around X, and roll rotates clockwise around Z.
package spatialmath

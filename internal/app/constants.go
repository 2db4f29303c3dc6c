package app

// MaxPlayers is the roster capacity of one game.
const MaxPlayers = 5

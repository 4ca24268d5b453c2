package service

// Database path - variable to allow testing with different paths
var dbPath = "data/storenews.db"

// Backup directory used when backup is called without a file
var backupDir = "data/backups"

package handler

import "github.com/go-telegram/bot/models"

// UserCommands is the command menu for the user bot.
var UserCommands = []models.BotCommand{
	{Command: "start", Description: "Start the bot and register"},
	{Command: "daily", Description: "Get daily tasks"},
	{Command: "balance", Description: "Check your points balance"},
	{Command: "withdraw", Description: "Request withdrawal"},
	{Command: "referrals", Description: "Your referral link and stats"},
	{Command: "settings", Description: "⚙️ Configure payment settings"},
	{Command: "help", Description: "Show available commands"},
}

// AdminCommands is the command menu for the admin bot.
var AdminCommands = []models.BotCommand{
	{Command: "broadcast", Description: "Send message to all users"},
	{Command: "stats", Description: "View total users and statistics"},
	{Command: "addtask", Description: "Add new task"},
	{Command: "deletetask", Description: "Delete existing task"},
	{Command: "tasks", Description: "View all tasks"},
}

// package models defines the data model for the nobar catalog client
package models

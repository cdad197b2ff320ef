package dynamo

// G is the Newtonian constant of gravitation in m^3 kg^-1 s^-2 (CODATA 2018).
const G = 6.67430e-11
